package models

import "time"

// Mentor is a registered mentor. Premium is recorded but carries no booking behaviour.
type Mentor struct {
	ID        string       `bson:"id" json:"id"`
	Name      string       `bson:"name" json:"name"`
	Expertise ExpertiseSet `bson:"expertise" json:"expertise"`
	Premium   bool         `bson:"premium" json:"premium"`
	CreatedAt time.Time    `bson:"created_at" json:"created_at"`
}

// Student is a registered student with a single area of interest.
type Student struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	AreaOfInterest string    `bson:"area_of_interest" json:"area_of_interest"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
