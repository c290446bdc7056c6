// Package main provides the Fashion-MNIST benchmark program, comparing the
// three RBF-SVM solver families on the clothing image dataset with
// hand-picked hyperparameters.
package main
