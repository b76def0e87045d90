// Package dberr turns driver-level MySQL failures into a typed error the
// query layer can match on. Failures that do not carry the server error
// shape pass through untouched; this package never masks a programming
// or environment fault as a generic database error.
package dberr

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// DatabaseError is a server-reported failure: the statement was rejected
// or the connection faulted in a way the server described.
type DatabaseError struct {
	// Code is the MySQL server error number, e.g. 1045.
	Code uint16
	// Message is the server error text.
	Message string
	// State is the five character SQLSTATE, e.g. "28000".
	State string
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error %d (%s): %s", e.Code, e.State, e.Message)
}

// Translate rewrites err into a *DatabaseError when it carries the
// driver's server error shape. Anything else is returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return err
	}
	return &DatabaseError{
		Code:    myErr.Number,
		Message: myErr.Message,
		State:   string(myErr.SQLState[:]),
	}
}
