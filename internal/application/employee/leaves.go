package employee

import (
	"context"
	"strconv"
)

// AccrueMonthlyLeaves resets casual leave to one day and grants one sick and one privilege day.
func (s *Service) AccrueMonthlyLeaves(ctx context.Context) (int64, error) {
	n, err := s.repo.AccrueMonthlyLeaves(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("monthly leave accrual failed")
		return 0, err
	}
	s.log.Info().Int64("employees", n).Msg("monthly leave accrual done")
	s.audit("employee.leaves_accrued", map[string]string{"employees": strconv.FormatInt(n, 10)})
	return n, nil
}
