// Package domain defines the core business entities of the application:
// decks of flashcards and the cards themselves, together with the
// validation rules that guard their fields. Entities carry their own
// owner identifier so that every persistence query can filter by owner
// without joining.
package domain
