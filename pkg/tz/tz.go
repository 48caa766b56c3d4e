package tz

import "time"

// Shanghai is the Asia/Shanghai location (CST, no DST).
var Shanghai *time.Location

func init() {
	var err error
	Shanghai, err = time.LoadLocation("Asia/Shanghai")
	if err != nil {
		panic("tz: load Asia/Shanghai: " + err.Error())
	}
}
