package model

// Version is the released version of docspell.
const Version = "0.4.0"
