package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"tracker-go/estimate"
	"tracker-go/sensor"
)

func main() {
	cycles := flag.Int("cycles", 600, "Number of cycles to simulate")
	step := flag.Float64("step", estimate.DefaultStep, "Cycle time step in seconds")
	alpha := flag.Float64("alpha", estimate.DefaultAlpha, "Position gain")
	beta := flag.Float64("beta", estimate.DefaultBeta, "Velocity gain")
	gamma := flag.Float64("gamma", estimate.DefaultGamma, "Acceleration gain")
	noise := flag.Float64("noise", 0.05, "Accelerometer noise standard deviation")
	seed := flag.Int64("seed", 1, "Noise generator seed")
	outPath := flag.String("out", "simulate.csv", "Output CSV path")
	plotPath := flag.String("plot", "", "Optional PNG plot of x-axis position vs truth")
	flag.Parse()

	src := sensor.NewSyntheticSource(*step, *seed)
	src.Noise = *noise
	gains := estimate.Gains{Alpha: *alpha, Beta: *beta, Gamma: *gamma}
	pipeline := estimate.NewPipeline(*step, gains, [estimate.NumAxes]estimate.AxisState{})

	rows := [][]string{{"seq", "t", "truth_px", "est_px", "truth_vx", "est_vx", "truth_ax", "est_ax"}}
	truthPts := make(plotter.XYs, 0, *cycles)
	estPts := make(plotter.XYs, 0, *cycles)
	sqErr := make([]float64, 0, *cycles)

	for i := 0; i < *cycles; i++ {
		t := float64(i) * *step
		truth := truthState(src, t)

		sample, _ := src.Sample()
		est := pipeline.Process(sample)

		rows = append(rows, []string{
			strconv.FormatUint(est.Seq, 10),
			fmt.Sprintf("%.3f", t),
			fmt.Sprintf("%.4f", truth.Pos), fmt.Sprintf("%.4f", est.X.Pos),
			fmt.Sprintf("%.4f", truth.Vel), fmt.Sprintf("%.4f", est.X.Vel),
			fmt.Sprintf("%.4f", truth.Acc), fmt.Sprintf("%.4f", est.X.Acc),
		})
		truthPts = append(truthPts, plotter.XY{X: t, Y: truth.Pos})
		estPts = append(estPts, plotter.XY{X: t, Y: est.X.Pos})
		d := est.X.Pos - truth.Pos
		sqErr = append(sqErr, d*d)
	}

	if err := writeCSV(*outPath, rows); err != nil {
		fmt.Printf("write csv failed: %v\n", err)
		os.Exit(1)
	}
	rmse := math.Sqrt(stat.Mean(sqErr, nil))
	fmt.Printf("Wrote %d cycles to %s, x-position RMSE %.4f m\n", *cycles, *outPath, rmse)

	if *plotPath != "" {
		if err := savePlot(*plotPath, truthPts, estPts); err != nil {
			fmt.Printf("plot failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Plot written to %s\n", *plotPath)
	}
}

// truthState returns the noiseless x-axis kinematics at elapsed time t for
// the synthetic profile, integrated analytically from rest at the origin.
func truthState(src *sensor.SyntheticSource, t float64) estimate.AxisState {
	w := 2 * math.Pi * src.Freq
	return estimate.AxisState{
		Acc: src.Amp * math.Sin(w*t),
		Vel: src.Amp / w * (1 - math.Cos(w*t)),
		Pos: src.Amp/w*t - src.Amp/(w*w)*math.Sin(w*t),
	}
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

func savePlot(path string, truth, est plotter.XYs) error {
	p := plot.New()
	p.Title.Text = "X position: truth vs estimate"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Position (m)"

	truthLine, err := plotter.NewLine(truth)
	if err != nil {
		return err
	}
	truthLine.Width = vg.Points(1)
	p.Add(truthLine)
	p.Legend.Add("truth", truthLine)

	estLine, err := plotter.NewLine(est)
	if err != nil {
		return err
	}
	estLine.Width = vg.Points(1)
	estLine.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
	p.Add(estLine)
	p.Legend.Add("estimate", estLine)

	p.Legend.Top = true
	return p.Save(10*vg.Inch, 5*vg.Inch, path)
}
