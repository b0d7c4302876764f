// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import "time"

// SetClock replaces the service clock so tests get distinct, ordered timestamps.
func (service *Service) SetClock(now func() time.Time) {
	service.now = now
}
