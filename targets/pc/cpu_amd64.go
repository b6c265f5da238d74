//go:build baremetal && amd64

package main

import "bootclock/core"

// Implemented in cpu_amd64.s
func hasCPUID() bool
func cpuid(leaf uint32) (eax, ebx, ecx, edx uint32)
func rdtsc() uint64
func inb(port uint16) uint8
func outb(port uint16, value uint8)
func halt()

// pcCPUDriver implements core.CPUDriver with CPUID and RDTSC
type pcCPUDriver struct{}

func (pcCPUDriver) HasCPUID() bool { return hasCPUID() }

func (pcCPUDriver) CPUID(leaf uint32) (eax, ebx, ecx, edx uint32) { return cpuid(leaf) }

func (pcCPUDriver) ReadCounter() uint64 { return rdtsc() }

// pcPortDriver implements core.PortDriver with IN/OUT
type pcPortDriver struct{}

func (pcPortDriver) Inb(port core.IOPort) uint8 { return inb(uint16(port)) }

func (pcPortDriver) Outb(port core.IOPort, value uint8) { outb(uint16(port), value) }
