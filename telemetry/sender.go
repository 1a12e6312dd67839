package telemetry

import (
	"log"
	"net"
	"sync"
	"time"
)

type message struct {
	data []byte
	flag uint32
}

type udpTarget struct {
	addr *net.UDPAddr
	mask uint32
}

type tcpClient struct {
	addr    string
	mask    uint32
	queue   chan *message
	running bool
	wg      sync.WaitGroup
}

// Sender fans published state out to downstream consumers over UDP and
// TCP. UDP targets get best-effort datagrams; TCP targets get a bounded
// queue with reconnect, dropping messages when the queue is full.
type Sender struct {
	udpTargets []*udpTarget
	tcpClients []*tcpClient
	connUDP    *net.UDPConn
	running    bool
}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) AddUDPTarget(addr string, mask uint32) error {
	uaddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return err
	}
	s.udpTargets = append(s.udpTargets, &udpTarget{addr: uaddr, mask: mask})
	return nil
}

func (s *Sender) AddTCPTarget(addr string, mask uint32) {
	s.tcpClients = append(s.tcpClients, &tcpClient{
		addr:  addr,
		mask:  mask,
		queue: make(chan *message, 1000),
	})
}

func (s *Sender) Start() error {
	conn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return err
	}
	s.connUDP = conn
	s.running = true
	for _, c := range s.tcpClients {
		c.start()
	}
	return nil
}

func (s *Sender) Stop() {
	s.running = false
	if s.connUDP != nil {
		s.connUDP.Close()
	}
	for _, c := range s.tcpClients {
		c.stop()
	}
}

// Send delivers data to every target whose mask covers the flag.
func (s *Sender) Send(data []byte, flag uint32) {
	if !s.running {
		return
	}
	msg := &message{data: data, flag: flag}

	for _, t := range s.udpTargets {
		if t.mask&flag == flag {
			s.connUDP.WriteToUDP(data, t.addr)
		}
	}
	for _, c := range s.tcpClients {
		if c.mask&flag == flag {
			select {
			case c.queue <- msg:
			default:
				// Queue full; drop rather than stall the cycle.
			}
		}
	}
}

func (c *tcpClient) start() {
	c.running = true
	c.wg.Add(1)
	go c.loop()
}

func (c *tcpClient) stop() {
	c.running = false
	close(c.queue)
	c.wg.Wait()
}

func (c *tcpClient) loop() {
	defer c.wg.Done()
	var conn net.Conn

	connect := func() bool {
		if conn != nil {
			return true
		}
		var err error
		conn, err = net.DialTimeout("tcp", c.addr, 2*time.Second)
		return err == nil
	}

	for msg := range c.queue {
		if !c.running {
			break
		}
		if !connect() {
			time.Sleep(500 * time.Millisecond)
			if !connect() {
				continue // drop
			}
		}
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if _, err := conn.Write(msg.data); err != nil {
			log.Printf("telemetry: write to %s failed: %v", c.addr, err)
			conn.Close()
			conn = nil
			time.Sleep(100 * time.Millisecond)
		}
	}
	if conn != nil {
		conn.Close()
	}
}
