package service

import "fmt"

const workloadSummaryCacheKey = "workload:summary"

func employeeProfileCacheKey(employeeID uint) string {
	return fmt.Sprintf("employee:%d:profile", employeeID)
}
