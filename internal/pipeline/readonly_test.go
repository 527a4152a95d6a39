package pipeline

import (
	"errors"
	"testing"
)

func TestValidateReadOnlyAccepts(t *testing.T) {
	plans := []string{
		"SELECT * FROM candidates",
		"select name from candidates where status = 'active'",
		"SELECT c.name FROM candidates c JOIN jobs j ON c.job_id = j.id;",
		"WITH recent AS (SELECT * FROM jobs) SELECT count(*) FROM recent",
		"EXPLAIN SELECT * FROM jobs",
		"SHOW TABLES",
		"DESCRIBE candidates",
		// Mutation keywords inside string literals are data, not statements.
		"SELECT * FROM audit WHERE action = 'DELETE'",
		`SELECT * FROM notes WHERE body = "drop the ball"`,
	}
	for _, plan := range plans {
		if err := ValidateReadOnly(plan); err != nil {
			t.Errorf("ValidateReadOnly(%q) = %v, want nil", plan, err)
		}
	}
}

func TestValidateReadOnlyRejects(t *testing.T) {
	plans := []string{
		"",
		"   ;  ",
		"DELETE FROM candidates",
		"INSERT INTO jobs (title) VALUES ('x')",
		"UPDATE candidates SET status = 'hired'",
		"DROP TABLE candidates",
		"TRUNCATE candidates",
		"CREATE TABLE tmp (id int)",
		"GRANT ALL ON candidates TO intern",
		"SELECT * INTO backup FROM candidates",
		"SELECT * FROM candidates; DROP TABLE candidates",
		"VACUUM candidates",
		"CALL purge_candidates()",
	}
	for _, plan := range plans {
		err := ValidateReadOnly(plan)
		if err == nil {
			t.Errorf("ValidateReadOnly(%q) = nil, want error", plan)
			continue
		}
		if !errors.Is(err, ErrPlanNotReadOnly) {
			t.Errorf("ValidateReadOnly(%q) = %v, want ErrPlanNotReadOnly", plan, err)
		}
	}
}
