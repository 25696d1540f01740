/*
Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/x-xyz/marketplace/base/env"
	"github.com/x-xyz/marketplace/base/log"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// Option is functional parameter for metrics option
type Option func(*opt)

type opt struct {
	withPodName bool
}

// WithoutPodName drops the pod tag, which otherwise multiplies the custom metric count
func WithoutPodName() Option {
	return func(o *opt) {
		o.withPodName = false
	}
}

// New creates a metric client that prefixes every key with pkgName
func New(pkgName string, options ...Option) Service {
	o := opt{
		withPodName: true,
	}
	for _, option := range options {
		option(&o)
	}

	ddTags := []string{
		// an empty host tag removes the tags datadog attaches per host
		"host:",
		"env:" + env.EnvName(),
		"app:" + env.AppName(),
	}
	if o.withPodName {
		ddTags = append(ddTags, "pod:"+env.PodName())
	}

	return &Metrics{
		pkgName: pkgName,
		datadog: DDMetrics{ddTags: ddTags},
	}
}

// Metrics recovers from vendor panics so a broken metric never fails the caller
type Metrics struct {
	pkgName string
	datadog DDMetrics
}

// sampleRate ranges from 0 to 1, 1 means always send
func (mt *Metrics) sampleRate() float64 {
	if rate := viper.GetFloat64("metrics_sample_rate"); rate > 0 && rate <= 1 {
		return rate
	}
	return 1
}

func (mt *Metrics) recoverPanic(typ, key string, tags []string) {
	if err := recover(); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "type": typ}).Error("metrics panic")
		mt.datadog.BumpSum(typ+".panic", 1, 1, "tag", mt.pkgName+"."+key+"#"+strings.Join(tags, "#"))
	}
}

func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverPanic("bumpavg", key, tags)
	mt.datadog.BumpAvg(mt.pkgName+"."+key, val, mt.sampleRate(), tags...)
}

func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverPanic("bumpsum", key, tags)
	mt.datadog.BumpSum(mt.pkgName+"."+key, val, mt.sampleRate(), tags...)
}

func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverPanic("bumphistogram", key, tags)
	mt.datadog.BumpHistogram(mt.pkgName+"."+key, val, mt.sampleRate(), tags...)
}

// BumpTime starts a timer which is reported on End, e.g.
//
//	defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	defer mt.recoverPanic("bumptime", key, tags)
	return &timeTracker{
		ddEnd: mt.datadog.BumpTime(mt.pkgName+"."+key, mt.sampleRate(), tags...),
		onPanic: func() {
			mt.datadog.BumpSum("bumptime.panic", 1, 1, "tag", mt.pkgName+"."+key+"#"+strings.Join(tags, "#"))
		},
	}
}

type timeTracker struct {
	ddEnd   Ender
	onPanic func()
}

func (t *timeTracker) End() {
	defer func() {
		if err := recover(); err != nil {
			t.onPanic()
		}
	}()
	t.ddEnd.End()
}
