package app_errors

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")
var ErrSessionNotFound = errors.New("wizard session not found")
var ErrNotSessionOwner = errors.New("you are not the session owner")
var ErrStepLocked = errors.New("step validation failed")
var ErrCourseNotSaved = errors.New("course was not saved")
var ErrMalformedOutline = errors.New("generated outline is malformed")
var ErrFileSize = errors.New("file is too large")
