package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracker-go/estimate"
	"tracker-go/journal"
	"tracker-go/sensor"
	"tracker-go/server"
	"tracker-go/telemetry"
	"tracker-go/web"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (optional)")
	sourceKind := flag.String("source", "synthetic", "Sensor source: serial, udp or synthetic")
	serialPort := flag.String("serial-port", "", "Serial port device (overrides config)")
	baud := flag.Int("baud", 0, "Serial baud rate (overrides config)")
	udpPort := flag.Int("udp", 0, "UDP sample port (overrides config)")
	httpPort := flag.Int("http", 0, "HTTP/WebSocket port, 0 to disable (overrides config)")
	journalPath := flag.String("journal", "", "Path to cycle journal output (overrides config)")
	distDir := flag.String("dist", "", "Static frontend directory")
	step := flag.Float64("step", 0, "Cycle time step in seconds (overrides config)")
	flag.Parse()

	cfg := estimate.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = estimate.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	if *serialPort != "" {
		cfg.Serial.Port = *serialPort
	}
	if *baud > 0 {
		cfg.Serial.Baud = *baud
	}
	if *udpPort > 0 {
		cfg.UDPPort = *udpPort
	}
	if *httpPort > 0 {
		cfg.HTTPPort = *httpPort
	}
	if *journalPath != "" {
		cfg.Journal = *journalPath
	}
	if *step > 0 {
		cfg.StepSec = *step
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := openSource(ctx, *sourceKind, cfg)
	if err != nil {
		log.Fatalf("sensor source: %v", err)
	}
	defer src.Close()

	pipeline := estimate.NewPipeline(cfg.StepSec, cfg.Gains(),
		[estimate.NumAxes]estimate.AxisState{})
	period := time.Duration(cfg.StepSec * float64(time.Second))
	runner := server.NewRunner(pipeline, src, period)

	if cfg.HTTPPort > 0 {
		webSvr := web.NewServer()
		webSvr.State = runner.Last
		go webSvr.Start(cfg.HTTPPort, *distDir)
		runner.SetWebHub(webSvr.Hub)
	}

	if len(cfg.Targets) > 0 {
		sender := telemetry.NewSender()
		for _, t := range cfg.Targets {
			mask := t.Mask
			if mask == 0 {
				mask = telemetry.FlagState
			}
			if t.Proto == "tcp" {
				sender.AddTCPTarget(t.Addr, mask)
				log.Printf("Added TCP target: %s (mask %x)", t.Addr, mask)
			} else {
				if err := sender.AddUDPTarget(t.Addr, mask); err != nil {
					log.Fatalf("target %s: %v", t.Addr, err)
				}
				log.Printf("Added UDP target: %s (mask %x)", t.Addr, mask)
			}
		}
		if err := sender.Start(); err != nil {
			log.Fatalf("telemetry sender: %v", err)
		}
		defer sender.Stop()
		runner.SetSender(sender)
	}

	if cfg.Journal != "" {
		jw, err := journal.NewWriter(cfg.Journal, journal.Header{
			Step:  cfg.StepSec,
			Gains: cfg.Gains(),
		})
		if err != nil {
			log.Fatalf("journal: %v", err)
		}
		defer jw.Close()
		runner.SetJournal(jw)
		log.Printf("Journaling cycles to %s", cfg.Journal)
	}

	go runner.Run(ctx)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	cancel()
}

func openSource(ctx context.Context, kind string, cfg estimate.Config) (sensor.Source, error) {
	switch kind {
	case "serial":
		src, err := sensor.OpenSerial(cfg.Serial.Port, cfg.Serial.Baud)
		if err != nil {
			return nil, err
		}
		go func() {
			if err := src.Monitor(ctx); err != nil {
				log.Printf("serial monitor: %v", err)
			}
		}()
		return src, nil
	case "udp":
		src, err := sensor.ListenUDP(cfg.UDPPort)
		if err != nil {
			return nil, err
		}
		log.Printf("UDP sample listener on %s", src.LocalAddr())
		go func() {
			if err := src.Monitor(ctx); err != nil {
				log.Printf("udp monitor: %v", err)
			}
		}()
		return src, nil
	case "synthetic":
		log.Println("Using synthetic sensor source")
		return sensor.NewSyntheticSource(cfg.StepSec, time.Now().UnixNano()), nil
	default:
		return nil, fmt.Errorf("unknown source %q", kind)
	}
}
