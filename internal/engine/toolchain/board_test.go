package toolchain_test

import (
	"context"
	"testing"

	"github.com/perilune/inocli/internal/core/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const boardListOutput = `Port         Protocol Type              Board Name  FQBN            Core
/dev/ttyACM0 serial   Serial Port (USB) Arduino Uno arduino:avr:uno arduino:avr
/dev/ttyUSB0 serial   Serial Port (USB)
`

func TestService_ListBoards_ParsesColumns(t *testing.T) {
	svc, m, _ := setupServiceTest(t)

	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(
		domain.CommandResult{Success: true, Stdout: boardListOutput}, nil)
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	boards, err := svc.ListBoards(context.Background())
	require.NoError(t, err)
	require.Len(t, boards, 2)

	require.Equal(t, "/dev/ttyACM0", boards[0].Port)
	require.Equal(t, "Serial Port (USB) Arduino Uno", boards[0].Name)
	require.Equal(t, "arduino:avr:uno", boards[0].FQBN)

	require.Equal(t, "/dev/ttyUSB0", boards[1].Port)
	require.Equal(t, "Unknown", boards[1].Name)
	require.Empty(t, boards[1].FQBN)
}

func TestService_ListBoards_ToolFailure(t *testing.T) {
	svc, m, _ := setupServiceTest(t)

	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(
		domain.CommandResult{Success: false, Stderr: "discovery failed"}, nil)
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.ListBoards(context.Background())
	require.ErrorIs(t, err, domain.ErrToolFailed)
}

const coreListOutput = `ID          Installed Latest Name
arduino:avr 1.8.6     1.8.6  Arduino AVR Boards
esp32:esp32 2.0.11    3.0.1  esp32
`

func TestService_Platforms_ParsesIDs(t *testing.T) {
	svc, m, _ := setupServiceTest(t)

	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(
		domain.CommandResult{Success: true, Stdout: coreListOutput}, nil)
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	ids, err := svc.Platforms(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"arduino:avr", "esp32:esp32"}, ids)
}

func TestService_InstallPlatform_AlreadyInstalled(t *testing.T) {
	svc, m, _ := setupServiceTest(t)

	// Only the core list runs; no update-index, no install.
	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(
		domain.CommandResult{Success: true, Stdout: coreListOutput}, nil).Times(1)
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	require.NoError(t, svc.InstallPlatform(context.Background(), "arduino:avr"))
}

func TestService_InstallPlatform_InstallsAndVerifies(t *testing.T) {
	svc, m, _ := setupServiceTest(t)

	const updatedList = coreListOutput + "rp2040:rp2040 3.6.0 3.6.0 Raspberry Pi Pico\n"

	gomock.InOrder(
		m.runner.EXPECT().Run(gomock.Any(), specWithLogical("core list")).Return(
			domain.CommandResult{Success: true, Stdout: coreListOutput}, nil),
		m.runner.EXPECT().Run(gomock.Any(), specWithLogical("core update-index")).Return(
			domain.CommandResult{Success: true}, nil),
		m.runner.EXPECT().Run(gomock.Any(), specWithLogical("core install rp2040:rp2040")).Return(
			domain.CommandResult{Success: true}, nil),
		m.runner.EXPECT().Run(gomock.Any(), specWithLogical("core list")).Return(
			domain.CommandResult{Success: true, Stdout: updatedList}, nil),
	)
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(4)

	require.NoError(t, svc.InstallPlatform(context.Background(), "rp2040:rp2040"))
}

func TestService_AddBoardURL(t *testing.T) {
	svc, m, _ := setupServiceTest(t)

	gomock.InOrder(
		m.runner.EXPECT().Run(gomock.Any(), specWithLogical("config init")).Return(
			domain.CommandResult{Success: false, Stderr: "config file already exists"}, nil),
		m.runner.EXPECT().Run(gomock.Any(), specWithLogical(
			"config add board_manager.additional_urls https://espressif.github.io/arduino-esp32/package_esp32_index.json")).Return(
			domain.CommandResult{Success: true}, nil),
	)
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	err := svc.AddBoardURL(context.Background(),
		"https://espressif.github.io/arduino-esp32/package_esp32_index.json")
	require.NoError(t, err)
}

func TestService_Version_TrimsOutput(t *testing.T) {
	svc, m, _ := setupServiceTest(t)

	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(
		domain.CommandResult{Success: true, Stdout: "arduino-cli  Version: 1.0.4\n"}, nil)
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	version, err := svc.Version(context.Background())
	require.NoError(t, err)
	require.Equal(t, "arduino-cli  Version: 1.0.4", version)
}

// specWithLogical matches an InvocationSpec by its logical command string.
type logicalMatcher struct {
	logical string
}

func (m logicalMatcher) Matches(x any) bool {
	spec, ok := x.(domain.InvocationSpec)
	return ok && spec.Logical == m.logical
}

func (m logicalMatcher) String() string {
	return "logical command is " + m.logical
}

func specWithLogical(logical string) gomock.Matcher {
	return logicalMatcher{logical: logical}
}
