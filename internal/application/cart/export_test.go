package cart

import "time"

// SetClock reemplaza el reloj de s (tests de inactividad).
func SetClock(s *Sessions, now func() time.Time) { s.now = now }
