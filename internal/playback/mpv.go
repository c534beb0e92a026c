package playback

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

const mpvConnectTimeout = 5 * time.Second

// MPV önizlemeyi harici bir mpv sürecine JSON IPC soketi üzerinden yaptırır.
// Süreç ilk Open çağrısında başlatılır ve sonraki yüklemelerde yeniden kullanılır.
type MPV struct {
	Binary     string
	SocketPath string
	Logger     *slog.Logger

	mu        sync.Mutex
	cmd       *exec.Cmd
	conn      net.Conn
	requestID int

	// launch süreci başlatır; testlerde değiştirilir.
	launch func(ctx context.Context, binary, socket string) (*exec.Cmd, error)
}

// NewMPV verilen mpv yolu için motor oluşturur.
func NewMPV(binary string, logger *slog.Logger) *MPV {
	if logger == nil {
		logger = slog.Default()
	}
	socket := filepath.Join(os.TempDir(), fmt.Sprintf("gifclip-mpv-%d.sock", os.Getpid()))
	return &MPV{
		Binary:     binary,
		SocketPath: socket,
		Logger:     logger,
		launch:     launchMPV,
	}
}

func launchMPV(_ context.Context, binary, socket string) (*exec.Cmd, error) {
	if binary == "" {
		binary = "mpv"
	}
	_ = os.Remove(socket)
	cmd := exec.Command(binary,
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=yes",
		"--really-quiet",
		"--title=gifclip",
		"--input-ipc-server="+socket,
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("mpv başlatılamadı: %w", err)
	}
	return cmd, nil
}

type mpvCommand struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id"`
}

type mpvReply struct {
	RequestID int    `json:"request_id"`
	Error     string `json:"error"`
	Event     string `json:"event"`
}

func (m *MPV) Open(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return err
	}
	if err := m.ensureRunning(ctx); err != nil {
		return err
	}
	return m.send("loadfile", abs, "replace")
}

func (m *MPV) Play() error  { return m.send("set_property", "pause", false) }
func (m *MPV) Pause() error { return m.send("set_property", "pause", true) }

func (m *MPV) SeekTo(ms int64) error {
	return m.send("seek", float64(ms)/1000.0, "absolute+exact")
}

func (m *MPV) Close() error {
	m.mu.Lock()
	conn, cmd := m.conn, m.cmd
	m.mu.Unlock()

	if conn != nil {
		_ = m.send("quit")
		_ = conn.Close()
	}
	if cmd != nil && cmd.Process != nil {
		done := make(chan struct{})
		go func() {
			_ = cmd.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			_ = cmd.Process.Kill()
		}
	}

	m.mu.Lock()
	m.conn = nil
	m.cmd = nil
	m.mu.Unlock()
	_ = os.Remove(m.SocketPath)
	return nil
}

func (m *MPV) ensureRunning(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn != nil {
		return nil
	}

	launch := m.launch
	if launch == nil {
		launch = launchMPV
	}
	cmd, err := launch(ctx, m.Binary, m.SocketPath)
	if err != nil {
		return err
	}
	m.cmd = cmd

	conn, err := dialWithRetry(ctx, m.SocketPath, mpvConnectTimeout)
	if err != nil {
		if cmd != nil && cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		m.cmd = nil
		return fmt.Errorf("mpv IPC soketine bağlanılamadı: %w", err)
	}
	m.conn = conn
	go m.drain(conn)
	return nil
}

func dialWithRetry(ctx context.Context, socket string, timeout time.Duration) (net.Conn, error) {
	deadline := time.Now().Add(timeout)
	var dialer net.Dialer
	for {
		conn, err := dialer.DialContext(ctx, "unix", socket)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func (m *MPV) send(args ...any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == nil {
		return errors.New("mpv çalışmıyor")
	}
	m.requestID++
	payload, err := json.Marshal(mpvCommand{Command: args, RequestID: m.requestID})
	if err != nil {
		return err
	}
	payload = append(payload, '\n')
	if _, err := m.conn.Write(payload); err != nil {
		return fmt.Errorf("mpv komutu gönderilemedi: %w", err)
	}
	return nil
}

// drain mpv yanıtlarını okur; yazma tarafının tıkanmaması için gereklidir.
func (m *MPV) drain(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var reply mpvReply
		if err := json.Unmarshal(scanner.Bytes(), &reply); err != nil {
			continue
		}
		if reply.Event == "" && reply.Error != "" && reply.Error != "success" {
			m.Logger.Debug("mpv command failed", "request_id", reply.RequestID, "error", reply.Error)
		}
	}
}
