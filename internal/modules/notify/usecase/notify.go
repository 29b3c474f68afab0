package usecase

import (
	"context"

	"focusflow/internal/modules/notify/domain"
	"focusflow/internal/modules/notify/dto"
	notifyin "focusflow/internal/modules/notify/port/in"
	"focusflow/internal/modules/notify/service"
)

type Interactor struct {
	dispatcher *service.Dispatcher
	slack      *service.SlackSink
	plugins    *service.PluginService
}

func NewInteractor(dispatcher *service.Dispatcher, slack *service.SlackSink, plugins *service.PluginService) notifyin.Usecase {
	return &Interactor{dispatcher: dispatcher, slack: slack, plugins: plugins}
}

func (i *Interactor) Publish(event dto.Event) {
	i.dispatcher.Publish(domain.Event{
		Kind:    event.Kind,
		Planned: event.Planned,
		Actual:  event.Actual,
		Coins:   event.Coins,
		EndsAt:  event.EndsAt,
	})
}

func (i *Interactor) Drain(ctx context.Context) {
	i.dispatcher.Drain(ctx)
}

func (i *Interactor) Test(ctx context.Context) (dto.ProbeOutput, error) {
	err := i.slack.Probe(ctx)
	return dto.ProbeOutput{OK: err == nil, Message: domain.Describe(err)}, err
}

func (i *Interactor) ListPlugins(ctx context.Context) ([]dto.PluginOutput, error) {
	manifests, err := i.plugins.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginOutput, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginOutput{Name: m.Name, Version: m.Version, Binary: m.Binary, Enabled: m.Enabled, Capabilities: caps})
	}
	return out, nil
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorCheckOutput, error) {
	results, err := i.plugins.Doctor(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DoctorCheckOutput, 0, len(results))
	for _, r := range results {
		msg := "ok"
		if r.Error != "" {
			msg = r.Error
		}
		out = append(out, dto.DoctorCheckOutput{Name: r.Name, Healthy: r.LifecycleOK, Message: msg})
	}
	return out, nil
}
