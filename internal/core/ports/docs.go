// Package ports defines the interfaces between the application core and its
// adapters: repositories and the unit of work on the persistence side, and the
// payment gateway, fiscal authority, document renderer, notification publisher,
// customer directory and locker on the collaborator side.
package ports
