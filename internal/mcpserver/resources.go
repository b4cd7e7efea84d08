package mcpserver

import (
	"os"
	"path/filepath"

	"golang.org/x/exp/jsonrpc2"

	"github.com/seuros/dictator/internal/census"
	"github.com/seuros/dictator/internal/config"
)

type mcpResource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	MimeType    string `json:"mimeType"`
	Description string `json:"description"`
}

type resourcesListParams struct{}

type resourcesListResult struct {
	Resources []mcpResource `json:"resources"`
}

func (s *Server) handleResourcesList(_ *resourcesListParams) (any, error) {
	return &resourcesListResult{Resources: []mcpResource{
		{URI: "dictator://config", Name: "config", MimeType: "application/toml", Description: "Raw .dictate.toml contents"},
		{URI: "dictator://census", Name: "census", MimeType: "application/json", Description: "Loaded decrees and external linter availability"},
	}}, nil
}

type resourcesReadParams struct {
	URI string `json:"uri"`
}

type resourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

type resourcesReadResult struct {
	Contents []resourceContents `json:"contents"`
}

func (s *Server) handleResourcesRead(p *resourcesReadParams) (any, error) {
	switch p.URI {
	case "dictator://config":
		return s.readConfigResource()
	case "dictator://census":
		return s.readCensusResource()
	default:
		return nil, jsonrpc2.NewError(int64(errResourceNotFound), "unknown resource: "+p.URI)
	}
}

func (s *Server) readConfigResource() (any, error) {
	s.sess.mu.Lock()
	cwd := s.sess.cwd
	s.sess.mu.Unlock()

	path := filepath.Join(cwd, config.FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return &resourcesReadResult{Contents: []resourceContents{{
			URI:      "dictator://config",
			MimeType: "application/toml",
			Text:     "# no .dictate.toml present; run occupy to create one\n",
		}}}, nil
	}
	return &resourcesReadResult{Contents: []resourceContents{{
		URI:      "dictator://config",
		MimeType: "application/toml",
		Text:     string(data),
	}}}, nil
}

func (s *Server) buildCensus() census.Snapshot {
	s.sess.mu.Lock()
	defer s.sess.mu.Unlock()
	return census.Build(s.sess.cfg, s.sess.reg, s.sess.hasConfig())
}

func (s *Server) readCensusResource() (any, error) {
	snap := s.buildCensus()
	return &resourcesReadResult{Contents: []resourceContents{{
		URI:      "dictator://census",
		MimeType: "application/json",
		Text:     mustMarshalJSON(snap),
	}}}, nil
}
