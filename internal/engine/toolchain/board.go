package toolchain

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/perilune/inocli/internal/core/domain"
	"go.trai.ch/zerr"
)

// ListBoards returns the boards arduino-cli currently sees on serial ports.
func (s *Service) ListBoards(ctx context.Context) ([]domain.Board, error) {
	result, err := s.Run(ctx, domain.OpBoardList, domain.Request{})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, zerr.With(
			errors.Join(domain.ErrToolFailed, zerr.New("board list failed")),
			"output", result.ErrorText())
	}
	return parseBoardList(result.Stdout), nil
}

// parseBoardList parses the columnar `board list` output. The first column
// is the port; the FQBN is recognized as the vendor:arch:board triple, since
// column widths vary and undetected boards omit trailing columns entirely.
// Lines without a detected board keep the name "Unknown".
func parseBoardList(output string) []domain.Board {
	var boards []domain.Board
	for i, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if i == 0 || len(fields) == 0 {
			continue // header
		}
		board := domain.Board{Port: fields[0], Name: "Unknown"}
		for j := len(fields) - 1; j >= 2; j-- {
			if strings.Count(fields[j], ":") != 2 {
				continue
			}
			board.FQBN = fields[j]
			if j > 2 {
				board.Name = strings.Join(fields[2:j], " ")
			}
			break
		}
		boards = append(boards, board)
	}
	return boards
}

// Platforms returns the IDs of the installed cores.
func (s *Service) Platforms(ctx context.Context) ([]string, error) {
	result, err := s.Run(ctx, domain.OpCoreList, domain.Request{})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, zerr.With(
			errors.Join(domain.ErrToolFailed, zerr.New("core list failed")),
			"output", result.ErrorText())
	}

	var ids []string
	for i, line := range strings.Split(result.Stdout, "\n") {
		fields := strings.Fields(line)
		if i == 0 || len(fields) == 0 {
			continue
		}
		ids = append(ids, fields[0])
	}
	return ids, nil
}

// InstallPlatform installs a core such as arduino:avr, refreshing the index
// first. Installing an already present core is a no-op.
func (s *Service) InstallPlatform(ctx context.Context, platformID string) error {
	installed, err := s.Platforms(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(installed, platformID) {
		s.logger.Info("platform " + platformID + " already installed")
		return nil
	}

	if result, err := s.Run(ctx, domain.OpCoreUpdateIndex, domain.Request{}); err != nil {
		return err
	} else if !result.Success {
		s.logger.Warn("core index update failed, trying install anyway: " + result.ErrorText())
	}

	result, err := s.Run(ctx, domain.OpCoreInstall, domain.Request{PlatformID: platformID})
	if err != nil {
		return err
	}
	if !result.Success {
		return zerr.With(zerr.With(
			errors.Join(domain.ErrToolFailed, zerr.New("core install failed")),
			"platform", platformID), "output", result.ErrorText())
	}

	// Trust the core list over the install exit code.
	installed, err = s.Platforms(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(installed, platformID) {
		return zerr.With(zerr.New("platform missing after install"), "platform", platformID)
	}
	return nil
}

// AddBoardURL registers an additional board manager URL, initializing the
// arduino-cli config file when it does not exist yet.
func (s *Service) AddBoardURL(ctx context.Context, url string) error {
	if result, err := s.Run(ctx, domain.OpConfigInit, domain.Request{}); err != nil {
		return err
	} else if !result.Success {
		// config init fails when the file already exists, which is fine.
		s.logger.Info("config init skipped: " + result.ErrorText())
	}

	result, err := s.Run(ctx, domain.OpConfigAdd, domain.Request{
		ConfigKey: "board_manager.additional_urls",
		Value:     url,
	})
	if err != nil {
		return err
	}
	if !result.Success {
		return zerr.With(zerr.With(
			errors.Join(domain.ErrToolFailed, zerr.New("failed to add board url")),
			"url", url), "output", result.ErrorText())
	}
	return nil
}

// Version returns the arduino-cli version string.
func (s *Service) Version(ctx context.Context) (string, error) {
	result, err := s.Run(ctx, domain.OpVersion, domain.Request{})
	if err != nil {
		return "", err
	}
	if !result.Success {
		return "", errors.Join(domain.ErrToolFailed, zerr.New("version query failed"))
	}
	return strings.TrimSpace(result.Stdout), nil
}

// Monitor attaches to a board's serial output for the given duration.
func (s *Service) Monitor(ctx context.Context, port string, baud, timeoutSec int) (string, error) {
	result, err := s.Run(ctx, domain.OpMonitor, domain.Request{
		Port: port, BaudRate: baud, TimeoutSec: timeoutSec,
	})
	if err != nil {
		return "", err
	}
	return result.Stdout, nil
}
