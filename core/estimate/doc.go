// Package estimate predicts delivery durations from a fixed feature vector.
// Backends are interchangeable behind the Estimator interface; the shipped
// regression model is bootstrapped from a synthetic curve until historical
// delivery outcomes exist to train against.
package estimate
