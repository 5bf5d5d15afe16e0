package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/pngme/pkg/png"
)

const (
	HeaderRequestID  = "X-Request-ID"
	HeaderPassphrase = "X-Pngme-Passphrase"
	MIMEImagePNG     = "image/png"
)

// requestID echoes the caller's X-Request-ID or assigns a new one.
func requestID() func(echo.HandlerFunc) echo.HandlerFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			id := c.Request().Header.Get(HeaderRequestID)
			if id == "" || len(id) > 128 {
				id = uuid.NewString()
			}
			c.Response().Header().Set(HeaderRequestID, id)
			return next(c)
		}
	}
}

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res.WriteHeader(status)
	_, err = res.Write(b)
	return err
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return writeJSON(c, status, ErrorResponse{Error: ResponseError{Message: msg, Type: errType}})
}

func writePNG(c *echo.Context, p *png.PNG) error {
	b := p.Bytes()
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, MIMEImagePNG)
	res.Header().Set("Content-Length", strconv.Itoa(len(b)))
	res.WriteHeader(http.StatusOK)
	_, err := res.Write(b)
	return err
}

// readBody reads at most limit bytes of the request body.
func readBody(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, limit)
	}
	return b, nil
}

func queryChunkType(c *echo.Context) (png.ChunkType, error) {
	s := c.QueryParam("type")
	if s == "" {
		return png.ChunkType{}, newInvalidRequest("type query parameter is required")
	}
	t, err := png.ParseChunkType(s)
	if err != nil {
		return png.ChunkType{}, err
	}
	if !t.IsValid() {
		return png.ChunkType{}, &png.InvalidChunkTypeError{Type: t}
	}
	return t, nil
}
