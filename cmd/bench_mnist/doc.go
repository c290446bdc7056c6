// Package main provides the MNIST benchmark program. It trains the
// classical SMO reference, the Nystrom kernel-approximation solver and
// (optionally) the CUDA solver on the handwritten digit dataset with
// hand-picked hyperparameters, and reports per-solver fit time and test
// classification error.
package main
