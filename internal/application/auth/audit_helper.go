package auth

import (
	"errors"

	"github.com/baechuer/peoplehub/internal/domain"
)

// auditResult records action with result=success|error; failures carry the domain error code.
func (s *Service) auditResult(action string, err error, fields map[string]string) {
	if fields == nil {
		fields = map[string]string{}
	}
	fields["result"] = "success"
	if err != nil {
		fields["result"] = "error"
		fields["error_code"] = "non_domain_error"
		var de *domain.Error
		if errors.As(err, &de) {
			fields["error_code"] = de.Code
		}
	}
	s.audit(action, fields)
}
