package flash

// Field is an extra key-value pair attached to a record. Fields appear in
// JSON output after the reserved keys; reserved keys always win on
// collision.
type Field struct {
	Key   string
	Value any
}

// Str returns a string-valued field.
func Str(key, value string) Field { return Field{Key: key, Value: value} }

// Int returns an integer-valued field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Any returns a field holding an arbitrary JSON-marshalable value.
func Any(key string, value any) Field { return Field{Key: key, Value: value} }

// File returns a field that overrides the detected call-site file. It is
// consumed by the dispatcher and does not appear in rendered output.
func File(path string) Field { return Field{Key: fileKey, Value: path} }

// Line returns a field that overrides the detected call-site line.
func Line(n int) Field { return Field{Key: lineKey, Value: n} }
