package logging

import "github.com/felixgeelhaar/bolt/v3"

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Key adds a storage key field.
func Key(key string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("key", key)
	}
}

// MatchID adds a match id field.
func MatchID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("match_id", id)
	}
}

// Count adds a named count field.
func Count(name string, n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(name, n)
	}
}

// Driver adds a storage driver field.
func Driver(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("driver", name)
	}
}

// Path adds a file path field.
func Path(p string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("path", p)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
