package engine

import (
	"github.com/ivlev/text2video/internal/captions"
	"github.com/ivlev/text2video/internal/schedule"
)

// Playback — курсор проигрывания: какая реплика активна и сколько кадров
// она уже показана. Продвигается ровно один раз на каждый кадр и
// отбрасывается после окончания цикла.
type Playback struct {
	Schedule schedule.Schedule
	Captions []captions.Caption

	index int
	shown int
}

// Next возвращает текст для очередного кадра. ok == false означает кадр без
// текста: пустой кадр на смене реплик либо реплики закончились. После того
// как индекс достиг количества реплик, все дальнейшие кадры идут без текста;
// индекс никогда не превышает количества реплик.
func (pb *Playback) Next() (text string, ok bool) {
	if pb.index < len(pb.Captions) && pb.shown < pb.Schedule[pb.index] {
		pb.shown++
		return pb.Captions[pb.index].Text, true
	}

	pb.shown = 0
	if pb.index < len(pb.Captions) {
		pb.index++
	}
	return "", false
}

// Index возвращает текущий индекс реплики (равен количеству реплик в
// терминальном состоянии)
func (pb *Playback) Index() int {
	return pb.index
}
