package health

// ServiceName is reported by the root endpoint.
const ServiceName = "ResumeGenius AI"

// Service encapsulates health-related checks.
type Service struct {
	generatorConfigured bool
}

// NewService constructs a new health service.
func NewService(generatorConfigured bool) *Service {
	return &Service{generatorConfigured: generatorConfigured}
}

// Status returns a simple health payload.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true}
}

// Root returns the service banner served at "/".
func (s *Service) Root() map[string]any {
	return map[string]any{
		"status":        "ok",
		"service":       ServiceName,
		"llm_available": s.generatorConfigured,
	}
}
