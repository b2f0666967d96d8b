// Package appointment 预约：冲突检测、状态流转、到期收尾
package appointment

import "time"

// Window 以拟定开始时间为中心、半径 hours 小时的闭区间。
// 已有活跃预约的开始时间落在该区间内即视为冲突。
func Window(start time.Time, hours int) (from, to time.Time) {
	w := time.Duration(hours) * time.Hour
	return start.Add(-w), start.Add(w)
}

// Overlaps 半开区间 [aStart,aEnd) 与 [bStart,bEnd) 是否相交
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
