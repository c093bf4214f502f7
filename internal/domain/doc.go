// Package domain contains the core business entities and value objects of
// the application: validated tweet requests and generated tweets. It is the
// heart of the system, independent of any specific infrastructure or
// delivery mechanism.
package domain
