package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Fullname         string             `bson:"fullname" json:"fullname"`
	Mail             string             `bson:"mail" json:"mail" validate:"required,email"`
	Password         string             `bson:"password,omitempty" json:"-"`
	Timezone         string             `bson:"timezone" json:"timezone"`
	Roles            []string           `bson:"roles" json:"roles"`
	Avatar           string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	NumberScan       int                `bson:"number_scan" json:"number_scan"`
	History          []ScanEvent        `bson:"history" json:"history"`
	RegistrationDate time.Time          `bson:"registration_date" json:"registration_date"`
}

// ScanEvent is embedded in User.History and has no identity of its own.
type ScanEvent struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	DateScan time.Time          `bson:"date_scan" json:"date_scan"`
	Owner    bool               `bson:"owner" json:"owner"`
}

// Profile is the projection served on the profile-read path. The password
// hash is never part of it.
type Profile struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	Fullname         string             `bson:"fullname" json:"fullname"`
	Mail             string             `bson:"mail" json:"mail"`
	Timezone         string             `bson:"timezone" json:"timezone"`
	Avatar           string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	NumberScan       int                `bson:"number_scan" json:"number_scan"`
	RegistrationDate time.Time          `bson:"registration_date" json:"registration_date"`
}
