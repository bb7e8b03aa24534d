// Package common holds small helpers shared across internal packages.
package common
