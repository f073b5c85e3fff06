package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ayusman/lumikey/internal/app"
	"github.com/ayusman/lumikey/internal/detector"
	"github.com/ayusman/lumikey/internal/keymap"
	"github.com/ayusman/lumikey/internal/keys"
	"github.com/ayusman/lumikey/internal/server"
	"github.com/ayusman/lumikey/internal/store"
	"github.com/ayusman/lumikey/internal/tray"
	"github.com/ayusman/lumikey/internal/uart"
)

func main() {
	var (
		portPath   = flag.String("port", "", "serial device for the controller link (empty: no serial output)")
		layoutName = flag.String("layout", "keys", "builtin layout name (keys, piano) or stored layout id")
		dbPath     = flag.String("db", "", "database path (default ~/.lumikey/lumikey.db)")
		cameraID   = flag.Int("camera", 0, "camera device ID")
		debounceMs = flag.Int("debounce", 0, "debounce interval in ms (0: stored setting or 200)")
		reportMs   = flag.Int("report", 0, "coordinate report interval in ms (0: stored setting or 2000)")
		minPixels  = flag.Int("min-pixels", 0, "minimum blob size in pixels (0: default 50)")
		httpAddr   = flag.String("http", ":8080", "diagnostics server address")
	)
	flag.Parse()

	fmt.Println("Lumikey - Optical Key Tracker")

	st, err := openStore(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	layout, err := resolveLayout(st, *layoutName)
	if err != nil {
		log.Fatalf("Failed to load layout %q: %v", *layoutName, err)
	}
	log.Printf("Layout %q loaded: %d zones", layout.Name, layout.Len())

	var port uart.SerialPorter
	if *portPath != "" {
		port, err = uart.Open(*portPath)
		if err != nil {
			log.Fatalf("Failed to open serial port %s: %v", *portPath, err)
		}
		log.Printf("Controller link open on %s", *portPath)
	} else {
		log.Println("No serial port configured; key commands will not be sent")
	}

	settings := st.Settings()
	if *debounceMs <= 0 {
		*debounceMs = settings.GetInt(store.SettingDebounceMs, 200)
	}
	if *reportMs <= 0 {
		*reportMs = settings.GetInt(store.SettingReportMs, 2000)
	}

	a := app.New(app.Config{
		Store:    st,
		Layout:   layout,
		Port:     port,
		CameraID: *cameraID,
		Engine: keys.Config{
			DebounceInterval: time.Duration(*debounceMs) * time.Millisecond,
			ReportInterval:   time.Duration(*reportMs) * time.Millisecond,
		},
		Detector: detector.Config{MinPixels: *minPixels},
	})

	srv := server.New(server.Config{
		Store:  st,
		Camera: a.Camera(),
	})
	a.Engine().AddListener(srv.Live().Publish)

	t := tray.New()
	a.Engine().AddListener(func(ev keys.Event) {
		if ev.Kind == keys.Press {
			t.SetHeldKey(string(ev.Key))
		} else {
			t.SetHeldKey("")
		}
	})
	t.OnToggle(a.SetEnabled)
	t.OnQuit(a.Stop)

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	go func() {
		log.Printf("Diagnostics server on %s", *httpAddr)
		if err := srv.ListenAndServe(*httpAddr); err != nil {
			log.Printf("Server failed: %v", err)
		}
	}()

	// Blocks until quit; the tray's quit handler stops the pipeline, which
	// flushes a final release before the process exits.
	t.Run()
}

// openStore opens the database at path, defaulting to ~/.lumikey/lumikey.db.
func openStore(path string) (*store.Store, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir := filepath.Join(homeDir, ".lumikey")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "lumikey.db")
	}
	return store.New(path)
}

// resolveLayout returns a builtin layout by name, or loads a stored layout
// by id.
func resolveLayout(st *store.Store, name string) (*keymap.Layout, error) {
	if l := keymap.Builtin(name); l != nil {
		return l, nil
	}

	stored, err := st.Layouts().GetByID(name)
	if err != nil {
		return nil, err
	}
	zones, err := st.Layouts().GetZones(stored.ID)
	if err != nil {
		return nil, err
	}
	return keymap.NewLayout(stored.Name, zones)
}
