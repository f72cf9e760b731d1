package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"InkBoard/internal/interact"
	boardnet "InkBoard/internal/net"
	"InkBoard/internal/persist"
	"InkBoard/internal/state"
	"InkBoard/internal/ui"
)

func main() {
	var (
		boardPath   = flag.String("board", defaultBoardPath(), "path of the board file")
		archivePath = flag.String("archive", "", "path of the snapshot archive (default: next to the board file)")
		viewerPort  = flag.Int("viewer-port", 8787, "port for the read-only LAN viewer, 0 to disable")
		announce    = flag.Bool("mdns", true, "advertise the viewer on the LAN via mDNS")
		retention   = flag.Duration("archive-retention", 30*24*time.Hour, "how long archived snapshots are kept")
		watch       = flag.Bool("watch", false, "discover boards on the LAN and print their viewer links, then exit")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if *watch {
		found := 0
		err := boardnet.Browse(func(addr string) {
			found++
			fmt.Printf("ws://%s/watch\n", addr)
		})
		if err != nil {
			logger.Error("discovery failed", "err", err)
			os.Exit(1)
		}
		if found == 0 {
			fmt.Println("no boards found")
		}
		return
	}

	if err := os.MkdirAll(filepath.Dir(*boardPath), 0o755); err != nil {
		logger.Warn("board directory unavailable", "err", err)
	}
	if *archivePath == "" {
		*archivePath = filepath.Join(filepath.Dir(*boardPath), "inkboard-archive.db")
	}

	// Seed the scene: prefer the board file, fall back to the newest
	// archived snapshot, else start empty.
	fileStore := persist.NewFileStore(*boardPath, logger)
	objects := fileStore.Load()

	archive, err := persist.OpenArchive(*archivePath, logger)
	if err != nil {
		logger.Warn("snapshot archive unavailable", "path", *archivePath, "err", err)
		archive = nil
	} else {
		defer archive.Close()
		if err := archive.Prune(*retention); err != nil {
			logger.Warn("archive prune failed", "err", err)
		}
		if objects == nil {
			if recovered, ok, err := archive.Latest(); err != nil {
				logger.Warn("archive recovery failed", "err", err)
			} else if ok {
				logger.Info("recovered board from archive", "objects", len(recovered))
				objects = recovered
			}
		}
	}

	scene := state.NewScene()
	if len(objects) > 0 {
		scene.ReplaceAll(objects)
	}
	history := state.NewHistory(scene)
	machine := interact.New(scene, history, nil, logger)
	board := ui.NewBoardWidget(scene, history, machine)
	machine.SetEnvironment(board)

	var viewer *boardnet.Viewer
	if *viewerPort > 0 {
		viewer = boardnet.NewViewer(logger)
		go func() {
			if err := viewer.Serve(*viewerPort); err != nil {
				logger.Warn("viewer stopped", "err", err)
			}
		}()
		if *announce {
			if server, err := boardnet.Advertise(*viewerPort); err != nil {
				logger.Warn("mdns advertisement failed", "err", err)
			} else {
				defer server.Shutdown()
			}
		}
		if ip, err := boardnet.OutgoingIP(); err == nil {
			logger.Info("viewer link", "url", wsURL(ip, *viewerPort))
		}
	}

	// Persistence runs off the event loop: commits are queued and a single
	// saver goroutine writes them in order, so input never blocks on disk
	// and a failed write only costs that save.
	saves := make(chan []state.CanvasObject, 16)
	go func() {
		for snapshot := range saves {
			if err := fileStore.Save(snapshot); err != nil {
				logger.Warn("board save failed", "err", err)
			}
			if archive != nil {
				if err := archive.Append(snapshot); err != nil {
					logger.Warn("archive append failed", "err", err)
				}
			}
			if viewer != nil {
				if data, err := persist.Encode(snapshot); err == nil {
					viewer.Broadcast(data)
				}
			}
		}
	}()
	history.OnCommit = func(snapshot []state.CanvasObject) {
		select {
		case saves <- snapshot:
		default:
			// Saver is behind; drop this one, the next commit re-saves
			// the latest state anyway.
			logger.Debug("save queue full, skipping snapshot")
		}
	}

	ui.RunApp(board, scene, logger)
}

func defaultBoardPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "inkboard.json"
	}
	return filepath.Join(home, ".inkboard", "board.json")
}

func wsURL(ip string, port int) string {
	return fmt.Sprintf("ws://%s:%d/watch", ip, port)
}
