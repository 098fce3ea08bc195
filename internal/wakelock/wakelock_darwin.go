package wakelock

func newProvider() Provider {
	return newCommandProvider("caffeinate", "-di")
}
