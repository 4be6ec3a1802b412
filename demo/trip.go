package demo

import (
	"context"

	"github.com/fwojciec/quill"
)

const (
	tripSystem = "You are a travel planner. Your task is to create a detailed trip plan " +
		"user's destination is {destination}, budget is {budget} USD, and duration is {duration} days."
	tripUser = "Create a detailed trip plan for the user. " +
		"Include recommendations for flights, accommodations, activities, and dining options. " +
		"Make sure to stay within the budget and consider the duration of the trip."
)

// TripPlanMessages is the chat prompt for TripPlan.
var TripPlanMessages = quill.NewSequence(
	quill.System(tripSystem),
	quill.User(tripUser),
)

// TripPlan asks for a trip plan within budget (USD) and duration (days).
func TripPlan(ctx context.Context, p quill.Provider, destination string, budget, duration int, opts ...quill.CallOption) (string, error) {
	return quill.Run(ctx, p, TripPlanMessages, map[string]any{
		"destination": destination,
		"budget":      budget,
		"duration":    duration,
	}, opts...)
}

// TripPlanPrompt returns the trip plan as a single-string template suitable
// for saving to disk.
func TripPlanPrompt() quill.PromptFile {
	return quill.NewPromptFile(quill.User(tripSystem + " " + tripUser))
}
