// Package robots holds controllers that drive Intcode machines through
// package circuit: a hull painting robot, an arcade cabinet and a repair
// droid explorer.
package robots
