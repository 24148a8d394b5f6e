// Package clock provides the canonical application time. All timestamps are
// recorded in West Africa Time (UTC+1).
package clock

import "time"

var WAT = time.FixedZone("WAT", 60*60)

func Now() time.Time {
	return time.Now().In(WAT)
}
