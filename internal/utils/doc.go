// Package utils provides terminal helpers shared by winkrb commands.
package utils
