// Package svm defines the solver contract shared by the three RBF-SVM
// training implementations (the classical SMO reference, the Nystrom
// kernel-approximation solver, and the CUDA solver) together with the
// label-shape conversions between one-hot and class-index encodings.
// Label shaping is an explicit per-solver responsibility: the SMO and CUDA
// solvers convert one-hot labels to class indices inside Fit, while the
// Nystrom solver regresses on the one-hot matrix directly.
package svm
