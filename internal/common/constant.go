package common

// DefaultCurrency is used for new quotes when nothing else is configured.
const DefaultCurrency = "NPR"

// DefaultDestination labels templates saved from a quote without destination.
const DefaultDestination = "Global"
