package server

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.handleHealthz)

	s.echo.GET("/api/v1/examples", s.handleExamples)
	s.echo.POST("/api/v1/generate", s.handleGenerate)
	s.echo.POST("/api/v1/download", s.handleDownload)
}
