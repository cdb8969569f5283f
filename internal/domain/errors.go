package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNoMatch is returned when no candidate matches the query
	ErrNoMatch = errors.New("no matching item found")

	// ErrLowConfidence is returned when the best match is too weak to auto-accept
	ErrLowConfidence = errors.New("match confidence below threshold")

	// ErrDuplicateItem is returned when a price observation collides with an existing record
	ErrDuplicateItem = errors.New("possible duplicate of existing item")

	// ErrNoWeightEstimate is returned when no average weight is known for an item
	ErrNoWeightEstimate = errors.New("no weight estimate available")

	// ErrIncompatibleUnits is returned when two unit prices share no common basis
	ErrIncompatibleUnits = errors.New("incompatible units")

	// ErrStoreUnavailable is returned when the persistence store request fails
	ErrStoreUnavailable = errors.New("item store request failed")

	// ErrClassifierUnavailable is returned when the hosted completion service fails
	ErrClassifierUnavailable = errors.New("intent classifier request failed")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
