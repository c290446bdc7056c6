// Package main provides the CIFAR-10 benchmark program, comparing the three
// RBF-SVM solver families on grayscale-reduced CIFAR-10 images with
// hand-picked hyperparameters.
package main
