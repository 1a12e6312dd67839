package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"tracker-go/estimate"
	"tracker-go/journal"
)

func main() {
	inPath := flag.String("in", "", "Input journal file")
	outPath := flag.String("out", "replay.csv", "Output CSV path")
	flag.Parse()

	if *inPath == "" {
		fmt.Println("--in required")
		os.Exit(1)
	}

	r, err := journal.Open(*inPath)
	if err != nil {
		fmt.Printf("open journal failed: %v\n", err)
		os.Exit(1)
	}
	defer r.Close()

	hdr := r.Header()
	fmt.Printf("Journal: step %.3fs, gains a=%.2f b=%.2f y=%.2f\n",
		hdr.Step, hdr.Gains.Alpha, hdr.Gains.Beta, hdr.Gains.Gamma)

	records, err := r.ReadAll()
	if err != nil {
		fmt.Printf("read journal failed: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Println("journal holds no cycles")
		os.Exit(1)
	}

	// Re-run the pipeline from the recorded configuration and samples; held
	// cycles are replayed as holds rather than re-gated.
	pipeline := estimate.NewPipeline(hdr.Step, hdr.Gains, [estimate.NumAxes]estimate.AxisState{})

	rows := [][]string{{"seq", "ts_ms", "flag", "rec_px", "replay_px", "rec_vx", "replay_vx"}}
	maxDrift := 0.0
	for _, rec := range records {
		var est estimate.Estimate
		if rec.Flag&int32(estimate.FlagHeld) != 0 {
			est = pipeline.Hold()
		} else {
			est = pipeline.Process(rec.Sample)
		}

		for axis := 0; axis < estimate.NumAxes; axis++ {
			got := est.AxisByIndex(axis)
			if d := math.Abs(got.Pos - rec.Est[axis].Pos); d > maxDrift {
				maxDrift = d
			}
		}
		rows = append(rows, []string{
			strconv.FormatUint(rec.Seq, 10),
			strconv.FormatInt(rec.TSMillis, 10),
			strconv.FormatInt(int64(rec.Flag), 10),
			fmt.Sprintf("%.4f", rec.Est[0].Pos), fmt.Sprintf("%.4f", est.X.Pos),
			fmt.Sprintf("%.4f", rec.Est[0].Vel), fmt.Sprintf("%.4f", est.X.Vel),
		})
	}

	if err := writeCSV(*outPath, rows); err != nil {
		fmt.Printf("write csv failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Replayed %d cycles to %s, max position drift %.6g m\n",
		len(records), *outPath, maxDrift)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
