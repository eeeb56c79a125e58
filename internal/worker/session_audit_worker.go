package worker

import (
	"github.com/spec-kit/movie-browser/internal/service"
)

// StartSessionAuditWorker registers the session audit handlers.
func StartSessionAuditWorker(audit *service.SessionAuditService) {
	if audit == nil {
		return
	}
	audit.RegisterHandlers()
}
