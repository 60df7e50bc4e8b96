package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents a document in the MongoDB users collection.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"` // never rendered
}

// RegisterForm is the form body for POST /signup.
type RegisterForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// LoginForm is the form body for POST /login.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}
