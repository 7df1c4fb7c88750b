package notify_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"disputedesk/internal/notify"
)

type recordingSink struct {
	puts   []notify.Notification
	delays []time.Duration
	err    error
}

func (s *recordingSink) Put(_ context.Context, _ string, n notify.Notification, delay time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.puts = append(s.puts, n)
	s.delays = append(s.delays, delay)
	return nil
}

func (s *recordingSink) Active(context.Context, string) ([]notify.Notification, error) {
	return s.puts, nil
}

var _ = Describe("Bound", func() {
	var (
		sink *recordingSink
		now  time.Time
	)

	BeforeEach(func() {
		sink = &recordingSink{}
		now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	})

	It("stamps channel and expiry from the delay", func() {
		b := notify.Bind(sink, "s-1", notify.ChannelUpload, func() time.Time { return now })
		b.Notify(context.Background(), notify.KindError, "Maximum 5 files allowed", notify.ValidationDelay)

		Expect(sink.puts).To(HaveLen(1))
		Expect(sink.puts[0].Channel).To(Equal(notify.ChannelUpload))
		Expect(sink.puts[0].ExpiresAt).To(Equal(now.Add(3 * time.Second)))
		Expect(sink.delays[0]).To(Equal(notify.ValidationDelay))
	})

	It("falls back to the general delay", func() {
		b := notify.Bind(sink, "s-1", notify.ChannelPortal, func() time.Time { return now })
		b.Notify(context.Background(), notify.KindSuccess, "ok", 0)

		Expect(sink.delays[0]).To(Equal(notify.GeneralDelay))
	})

	It("swallows sink errors", func() {
		sink.err = errors.New("redis down")
		b := notify.Bind(sink, "s-1", notify.ChannelPortal, nil)
		Expect(func() { b.Notify(context.Background(), notify.KindInfo, "x", time.Second) }).NotTo(Panic())
	})
})

var _ = Describe("LiveOnly", func() {
	It("drops notifications once their delay elapsed and never revives them", func() {
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		items := []notify.Notification{
			{Message: "general", ExpiresAt: base.Add(notify.GeneralDelay)},
			{Message: "validation", ExpiresAt: base.Add(notify.ValidationDelay)},
		}

		Expect(notify.LiveOnly(base.Add(time.Second), items)).To(HaveLen(2))

		live := notify.LiveOnly(base.Add(4*time.Second), items)
		Expect(live).To(HaveLen(1))
		Expect(live[0].Message).To(Equal("general"))

		Expect(notify.LiveOnly(base.Add(5*time.Second), items)).To(BeEmpty())
		Expect(notify.LiveOnly(base.Add(time.Hour), items)).To(BeEmpty())
	})
})

var _ = Describe("Delays", func() {
	It("maps the standard lifetimes to configured values", func() {
		d := notify.Delays{General: 7 * time.Second, Validation: 2 * time.Second}
		Expect(d.Resolve(notify.GeneralDelay)).To(Equal(7 * time.Second))
		Expect(d.Resolve(0)).To(Equal(7 * time.Second))
		Expect(d.Resolve(notify.ValidationDelay)).To(Equal(2 * time.Second))
		Expect(d.Resolve(time.Minute)).To(Equal(time.Minute))
	})

	It("keeps the defaults when unset", func() {
		var d notify.Delays
		Expect(d.Resolve(0)).To(Equal(notify.GeneralDelay))
		Expect(d.Resolve(notify.ValidationDelay)).To(Equal(notify.ValidationDelay))
	})
})
