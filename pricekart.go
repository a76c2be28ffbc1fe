// Package pricekart compares grocery prices across Indian quick-commerce
// sites. It scrapes product listings (name, price, MRP) for a product and
// delivery location query from five sites, normalizes them into a common
// schema, and exposes the results through a small HTTP API with
// asynchronous job tracking.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, fs/).
package pricekart
