package main

import "flag"
import "fmt"
import "os"

import "github.com/kernelmethods/svmbench/bench"
import "github.com/kernelmethods/svmbench/datasets"
import _ "github.com/kernelmethods/svmbench/datasets/mnist"
import "github.com/kernelmethods/svmbench/metrics"
import cusvm "github.com/kernelmethods/svmbench/svm/cu"
import "github.com/kernelmethods/svmbench/svm/nystrom"
import "github.com/kernelmethods/svmbench/svm/smo"

func main() {
	datadir := flag.String("datadir", "", "directory containing the MNIST idx .gz files")
	gpu := flag.Bool("gpu", false, "also run the CUDA solver (run it alone; it competes for device memory)")
	device := flag.Int("device", 0, "CUDA device ordinal")
	threads := flag.Int("threads", 1, "goroutines for CPU kernel matrix rows")
	flag.Parse()

	d, err := datasets.Load("mnist", *datadir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(bench.Hardware())
	ntrain, feats := d.TrainX.Dims()
	ntest, _ := d.TestX.Dims()
	fmt.Printf("%s: %d train / %d test samples, %d features, %d classes\n",
		d.Name, ntrain, ntest, feats, d.Classes)

	metric := metrics.Get(d.Name)[0]

	// hyperparameters are hand-tuned per solver for this dataset
	if _, err := bench.Run(os.Stdout, "SMO", smo.New(smo.HyperParameters{
		Sigma:   5,
		C:       10,
		Threads: *threads,
	}), d, metric); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if _, err := bench.Run(os.Stdout, "NYSTROM", nystrom.New(nystrom.HyperParameters{
		Sigma:   5,
		M:       4800,
		Epochs:  10,
		Eta:     0.5,
		Lambda:  1e-6,
		Threads: *threads,
	}), d, metric); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *gpu {
		if _, err := bench.Run(os.Stdout, "CUSVM", cusvm.New(cusvm.HyperParameters{
			Sigma:   5,
			C:       10,
			Device:  *device,
			Threads: *threads,
		}), d, metric); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
