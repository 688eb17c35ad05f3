package domain

type UserID = uint
type SessionID = uint
type DeviceID = uint
type ClothingID = uint
type ReadingID = uint
