// Package api serves the pngme operations over HTTP. Every endpoint takes a
// raw PNG as the request body and parses a fresh container per request.
package api

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/stego"
	"github.com/samcharles93/pngme/internal/version"
	"github.com/samcharles93/pngme/pkg/png"
)

// DefaultMaxBodyBytes caps request bodies when Config.MaxBodyBytes is unset.
const DefaultMaxBodyBytes = 32 << 20

type Config struct {
	MaxBodyBytes int64
	Logger       logger.Logger
}

type Server struct {
	maxBody int64
	log     logger.Logger
}

func NewServer(cfg Config) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	return &Server{
		maxBody: cfg.MaxBodyBytes,
		log:     cfg.Logger.With("component", "api"),
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.Use(requestID())

	e.GET("/healthz", s.handleHealth)
	e.POST("/v1/png/chunks", s.handleChunks)
	e.POST("/v1/png/encode", s.handleEncode)
	e.POST("/v1/png/decode", s.handleDecode)
	e.POST("/v1/png/remove", s.handleRemove)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, HealthResponse{Status: "ok", Version: version.String()})
}

func (s *Server) handleChunks(c *echo.Context) error {
	p, err := s.readPNG(c)
	if err != nil {
		return s.fail(c, err)
	}
	return writeJSON(c, http.StatusOK, stego.Summarize(p))
}

func (s *Server) handleEncode(c *echo.Context) error {
	t, err := queryChunkType(c)
	if err != nil {
		return s.fail(c, err)
	}
	query := c.Request().URL.Query()
	if !query.Has("message") {
		return s.fail(c, newInvalidRequest("message query parameter is required"))
	}
	p, err := s.readPNG(c)
	if err != nil {
		return s.fail(c, err)
	}

	opts := stego.Options{Passphrase: c.Request().Header.Get(HeaderPassphrase)}
	chunk, err := stego.Hide(p, t, []byte(query.Get("message")), opts)
	if err != nil {
		return s.fail(c, err)
	}
	s.logger(c).Info("chunk encoded", "type", t.String(), "length", chunk.Length(), "sealed", opts.Passphrase != "")
	return writePNG(c, p)
}

func (s *Server) handleDecode(c *echo.Context) error {
	t, err := queryChunkType(c)
	if err != nil {
		return s.fail(c, err)
	}
	p, err := s.readPNG(c)
	if err != nil {
		return s.fail(c, err)
	}

	opts := stego.Options{Passphrase: c.Request().Header.Get(HeaderPassphrase)}
	if c.QueryParam("all") == "true" {
		msgs, err := stego.RevealAll(p, t.String(), opts)
		if err != nil {
			return s.fail(c, err)
		}
		return writeJSON(c, http.StatusOK, DecodeResponse{Messages: msgs})
	}
	msg, err := stego.Reveal(p, t.String(), opts)
	if err != nil {
		return s.fail(c, err)
	}
	return writeJSON(c, http.StatusOK, msg)
}

func (s *Server) handleRemove(c *echo.Context) error {
	t, err := queryChunkType(c)
	if err != nil {
		return s.fail(c, err)
	}
	p, err := s.readPNG(c)
	if err != nil {
		return s.fail(c, err)
	}
	chunk, err := stego.Strip(p, t.String())
	if err != nil {
		return s.fail(c, err)
	}
	s.logger(c).Info("chunk removed", "type", t.String(), "length", chunk.Length())
	return writePNG(c, p)
}

func (s *Server) readPNG(c *echo.Context) (*png.PNG, error) {
	body, err := readBody(c.Request().Body, s.maxBody)
	if err != nil {
		return nil, err
	}
	return png.Parse(body)
}

func (s *Server) fail(c *echo.Context, err error) error {
	status, errType := errorStatus(err)
	log := s.logger(c)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "path", c.Request().URL.Path, "error", err)
	} else {
		log.Debug("request rejected", "path", c.Request().URL.Path, "status", status, "error", err)
	}
	return writeError(c, status, errType, err.Error())
}

func (s *Server) logger(c *echo.Context) logger.Logger {
	if id := c.Response().Header().Get(HeaderRequestID); id != "" {
		return s.log.With("request_id", id)
	}
	return s.log
}
