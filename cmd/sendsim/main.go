package main

import (
	"flag"
	"log"
	"net"
	"time"

	"tracker-go/estimate"
	"tracker-go/sensor"
)

// sendsim streams synthetic acceleration frames at a trackd UDP listener so
// the full ingest path can be exercised without hardware.
func main() {
	addr := flag.String("addr", "127.0.0.1:5555", "UDP destination")
	step := flag.Float64("step", estimate.DefaultStep, "Sample period in seconds")
	noise := flag.Float64("noise", 0.05, "Accelerometer noise standard deviation")
	seed := flag.Int64("seed", 0, "Noise generator seed, 0 for time-based")
	flag.Parse()

	dst, err := net.ResolveUDPAddr("udp", *addr)
	if err != nil {
		log.Fatalf("resolve %s: %v", *addr, err)
	}
	conn, err := net.DialUDP("udp", nil, dst)
	if err != nil {
		log.Fatalf("dial %s: %v", *addr, err)
	}
	defer conn.Close()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	src := sensor.NewSyntheticSource(*step, *seed)
	src.Noise = *noise

	log.Printf("Streaming frames to %s every %.0fms. Press Ctrl+C to exit.",
		*addr, *step*1000)

	ticker := time.NewTicker(time.Duration(*step * float64(time.Second)))
	defer ticker.Stop()

	var seq uint32
	for range ticker.C {
		sample, _ := src.Sample()
		seq++
		if _, err := conn.Write(sensor.EncodeFrame(seq, sample)); err != nil {
			log.Printf("send frame %d: %v", seq, err)
		}
	}
}
