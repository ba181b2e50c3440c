// Package services contains stateless domain services for the fulfillment
// routing flow. Domain services hold logic that spans aggregates, such as
// ranking candidate stores against a customer location, without performing
// any I/O themselves.
package services
