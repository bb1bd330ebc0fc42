package toolchain

import (
	"context"
	"errors"
	"os"

	"github.com/perilune/inocli/internal/core/domain"
	"go.trai.ch/zerr"
)

// UploadOutput is the outcome of flashing a board.
type UploadOutput struct {
	Port    string `json:"port"`
	Success bool   `json:"success"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Upload flashes a board on the given port. Either a prebuilt hex image or a
// sketch path must be supplied; with a sketch path arduino-cli recompiles
// before uploading.
func (s *Service) Upload(ctx context.Context, req domain.Request) (UploadOutput, error) {
	if req.HexPath != "" {
		if _, err := os.Stat(req.HexPath); err != nil {
			return UploadOutput{}, zerr.With(
				errors.Join(domain.ErrHexNotFound, err), "hex_path", req.HexPath)
		}
	} else {
		resolved, err := s.sketches.Validate(req.SketchPath)
		if err != nil {
			return UploadOutput{}, err
		}
		req.SketchPath = resolved
	}

	result, err := s.Run(ctx, domain.OpUpload, req)
	if err != nil {
		return UploadOutput{}, err
	}

	out := UploadOutput{Port: req.Port, Success: result.Success, Output: result.Stdout}
	if !result.Success {
		out.Error = result.ErrorText()
	}
	return out, nil
}

// FlashOutput combines a compilation with the upload that followed it.
type FlashOutput struct {
	Compile CompileOutput `json:"compile"`
	Upload  UploadOutput  `json:"upload,omitempty"`
}

// CompileAndUpload compiles a sketch and, on success, flashes the produced
// image to the board. The compile step decides which image gets flashed, so
// a compile without a locatable artifact aborts the upload.
func (s *Service) CompileAndUpload(ctx context.Context, sketchPath, fqbn, port string) (FlashOutput, error) {
	compiled, err := s.Compile(ctx, sketchPath, fqbn)
	if err != nil {
		return FlashOutput{}, err
	}
	if !compiled.Success {
		return FlashOutput{Compile: compiled}, nil
	}
	if compiled.HexPath == "" {
		return FlashOutput{Compile: compiled}, zerr.With(
			zerr.New("compiled but no flashable image was found"), "build_dir", compiled.BuildDir)
	}

	uploaded, err := s.Upload(ctx, domain.Request{HexPath: compiled.HexPath, Port: port, FQBN: fqbn})
	if err != nil {
		return FlashOutput{Compile: compiled}, err
	}
	return FlashOutput{Compile: compiled, Upload: uploaded}, nil
}
