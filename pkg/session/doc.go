/*
Package session serializes access to conversation sessions.

The Manager guarantees that turns, resets and deletes of one session never
overlap: locally through reference-counted mutexes, and across replicas
through an optional ports.DistributedLocker. Sessions of different IDs never
block each other.
*/
package session
