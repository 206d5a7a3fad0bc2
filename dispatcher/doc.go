/*
Package dispatcher provides a minimal typed event dispatcher for in-process
fan-out. Free functions and receiver-bound methods subscribe to a
Dispatcher, and every Dispatch call invokes all currently registered
handlers with the dispatched event value.
*/
package dispatcher
