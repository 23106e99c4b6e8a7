// Package mcp exposes the photo commands as Model Context Protocol tools
// over stdio.
package mcp

import (
	"context"

	mcp "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/server"

	"github.com/cjeanneret/CamGo/internal/log"
	"github.com/cjeanneret/CamGo/internal/logic/photo"
)

// Server wraps the MCP server with the photo commands.
type Server struct {
	mcpServer *server.Server
	commands  *photo.Commands
}

// NewServer creates an MCP server delegating every tool to commands.
func NewServer(commands *photo.Commands, version string) *Server {
	s := &Server{commands: commands}

	s.mcpServer = server.New(server.Info{
		Name:    "camgo",
		Version: version,
	}, server.WithInstructions(`
CamGo drives a single camera.

Available tools:
- take_photo: capture a photo; returns base64 bytes and the MIME type
- save_photo: store base64 bytes under the pictures directory; returns the path
- greet: connectivity check
`))

	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("take_photo").
		Description("Capture a photo from the active camera backend.").
		Handler(s.handleTakePhoto)

	s.mcpServer.Tool("save_photo").
		Description("Save photo bytes as photo_<unix>.<ext> and return the full path.").
		Handler(s.handleSavePhoto)

	s.mcpServer.Tool("greet").
		Description("Return a greeting for name.").
		Handler(s.handleGreet)
}

type TakePhotoInput struct{}

type PhotoOutput struct {
	Bytes    []byte `json:"bytes"`
	MIMEType string `json:"mime_type"`
}

type SavePhotoInput struct {
	Bytes    []byte `json:"bytes" jsonschema:"description=Photo bytes as base64"`
	MIMEType string `json:"mime_type" jsonschema:"description=MIME type reported by take_photo; unknown types are saved as .bin"`
}

type GreetInput struct {
	Name string `json:"name" jsonschema:"description=Name to greet"`
}

type GreetOutput struct {
	Message string `json:"message"`
}

func (s *Server) handleTakePhoto(ctx context.Context, _ TakePhotoInput) (PhotoOutput, error) {
	img, err := s.commands.TakePhoto(ctx)
	if err != nil {
		return PhotoOutput{}, err
	}
	return PhotoOutput{Bytes: img.Bytes, MIMEType: img.MIMEType}, nil
}

func (s *Server) handleSavePhoto(ctx context.Context, input SavePhotoInput) (photo.Saved, error) {
	return s.commands.SavePhoto(ctx, input.Bytes, input.MIMEType)
}

func (s *Server) handleGreet(_ context.Context, input GreetInput) (GreetOutput, error) {
	return GreetOutput{Message: s.commands.Greet(input.Name)}, nil
}

// ServeStdio runs the MCP server on stdin/stdout until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	logger := log.WithComponent("mcp")
	logger.Info().Str(log.FieldBackend, s.commands.Backend()).Msg("mcp server on stdio")
	return mcp.ServeStdio(ctx, s.mcpServer)
}
