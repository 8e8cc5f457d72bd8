// internal/workers/data-access/query-postgresql/queries/applications.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

// ApplicationsSnapshot returns every application in the pipeline. It feeds the
// dashboard's in-memory filter and sort stage.
func ApplicationsSnapshot(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	query := `
		SELECT id, name, specialty, market, status, network_impact,
		       work_experience, submission_date, COALESCE(assigned_analyst, '')
		FROM provider_applications
		ORDER BY submission_date DESC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	results, err := scanApplications(rows)
	if err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func ApplicationDetail(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	applicationID, ok := params["applicationId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, name, specialty, market, status, networkImpact, submissionDate, assignedAnalyst string
	var workExperience int
	var npi, licenseNumber, rosterID sql.NullString

	err := db.QueryRowContext(ctx, `
		SELECT id, name, specialty, market, status, network_impact,
		       work_experience, submission_date, COALESCE(assigned_analyst, ''),
		       npi, license_number, roster_id
		FROM provider_applications
		WHERE id = $1`, applicationID).Scan(
		&id, &name, &specialty, &market, &status, &networkImpact,
		&workExperience, &submissionDate, &assignedAnalyst,
		&npi, &licenseNumber, &rosterID,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":              id,
		"name":            name,
		"specialty":       specialty,
		"market":          market,
		"status":          status,
		"networkImpact":   networkImpact,
		"workExperience":  workExperience,
		"submissionDate":  submissionDate,
		"assignedAnalyst": assignedAnalyst,
		"npi":             npi.String,
		"licenseNumber":   licenseNumber.String,
		"rosterId":        rosterID.String,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func ApplicationsByAnalyst(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	analyst, ok := params["analyst"].(string)
	if !ok || analyst == "" {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, specialty, market, status, network_impact,
		       work_experience, submission_date, COALESCE(assigned_analyst, '')
		FROM provider_applications
		WHERE assigned_analyst = $1
		ORDER BY submission_date DESC`, analyst)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	results, err := scanApplications(rows)
	if err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func RosterSummary(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	rosterID, ok := params["rosterId"].(string)
	if !ok || rosterID == "" {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var total, pending, approved, denied int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status NOT IN ('Approved', 'Denied')),
		       COUNT(*) FILTER (WHERE status = 'Approved'),
		       COUNT(*) FILTER (WHERE status = 'Denied')
		FROM provider_applications
		WHERE roster_id = $1`, rosterID).Scan(&total, &pending, &approved, &denied)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"rosterId": rosterID,
		"total":    total,
		"pending":  pending,
		"approved": approved,
		"denied":   denied,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func scanApplications(rows *sql.Rows) ([]map[string]interface{}, error) {
	var results []map[string]interface{}
	for rows.Next() {
		var id, name, specialty, market, status, networkImpact, submissionDate, assignedAnalyst string
		var workExperience int
		err := rows.Scan(&id, &name, &specialty, &market, &status, &networkImpact,
			&workExperience, &submissionDate, &assignedAnalyst)
		if err != nil {
			return nil, err
		}
		results = append(results, map[string]interface{}{
			"id":              id,
			"name":            name,
			"specialty":       specialty,
			"market":          market,
			"status":          status,
			"networkImpact":   networkImpact,
			"workExperience":  workExperience,
			"submissionDate":  submissionDate,
			"assignedAnalyst": assignedAnalyst,
		})
	}
	return results, rows.Err()
}
